package models

// NoCaption replaces a missing gallery caption.
const NoCaption = "No Message"

// LevelGallery is the first floor entry of a gallery response.
type LevelGallery struct {
	Images   []string `json:"floor_image"`
	Messages []string `json:"message"`
}

type GalleryImage struct {
	URL     string
	Caption string
}

// Items pairs every image with its caption.
func (g LevelGallery) Items() []GalleryImage {
	out := make([]GalleryImage, 0, len(g.Images))
	for i, img := range g.Images {
		caption := NoCaption
		if i < len(g.Messages) && g.Messages[i] != "" {
			caption = g.Messages[i]
		}
		out = append(out, GalleryImage{URL: img, Caption: caption})
	}
	return out
}

// FloorPreview is what the gallery screen lists per floor.
type FloorPreview struct {
	FloorID   ID
	FloorName string
	Preview   string
	Images    []GalleryImage
}
