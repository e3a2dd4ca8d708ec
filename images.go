package dome

// ImageItem is one entry of the gallery's image pool.
type ImageItem struct {
	// Src is the image location handed to the ImageSource. Required.
	Src string
	// Alt is a short description of the image.
	Alt string
	// FullSrc optionally names a higher-resolution image shown while the
	// tile is focused.
	FullSrc string
}

// DisplaySrc returns the source used for the focused overlay.
func (it ImageItem) DisplaySrc() string {
	if it.FullSrc != "" {
		return it.FullSrc
	}
	return it.Src
}

// Images normalizes a plain list of sources into ImageItems with empty Alt.
func Images(srcs ...string) []ImageItem {
	items := make([]ImageItem, len(srcs))
	for i, s := range srcs {
		items[i] = ImageItem{Src: s}
	}
	return items
}

func sameImages(a, b []ImageItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
