package lastfm

import "LastFM-Go/pkg/xmldoc"

// ImageSize names one of the image variants the service attaches to entities.
type ImageSize string

const (
	ImageSmall       ImageSize = "small"
	ImageMedium      ImageSize = "medium"
	ImageLarge       ImageSize = "large"
	ImageLargeSquare ImageSize = "largesquare"
	ImageHuge        ImageSize = "huge"
	ImageExtraLarge  ImageSize = "extralarge"
	ImageMega        ImageSize = "mega"
	ImageOriginal    ImageSize = "original"
)

// Images maps sizes to URLs.
type Images map[ImageSize]string

// URL returns the image of the requested size. When that size is absent the
// medium image is returned, and "" when neither exists.
func (im Images) URL(size ImageSize) string {
	if u, ok := im[size]; ok {
		return u
	}
	return im[ImageMedium]
}

// Sizes lists the sizes present.
func (im Images) Sizes() []ImageSize {
	out := make([]ImageSize, 0, len(im))
	for s := range im {
		out = append(out, s)
	}
	return out
}

// loadImages reads the <image size="..."> children of el. Images without a
// size attribute are stored as the original. Empty URLs are skipped.
func loadImages(el *xmldoc.Element) Images {
	imgs := el.ChildrenNamed("image")
	if len(imgs) == 0 {
		return nil
	}
	out := make(Images, len(imgs))
	for _, img := range imgs {
		u := img.Text()
		if u == "" {
			continue
		}
		size := ImageSize(img.AttrValue("size"))
		if size == "" {
			size = ImageOriginal
		}
		out[size] = u
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
