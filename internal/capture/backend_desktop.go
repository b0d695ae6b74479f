//go:build windows || darwin

package capture

func detectBackend() Backend {
	return genericBackend{}
}
