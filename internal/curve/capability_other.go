//go:build !amd64 && !arm64

package curve

func init() {
	initCapabilities()
}
