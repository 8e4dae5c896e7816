package imaging

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// ramp runs from dark to light.
const ramp = " .:-=+*#%@"

// Preview renders img as a block of text at most width columns wide.
// Terminal cells are roughly twice as tall as wide, so rows are halved.
func Preview(img *Image, width int) string {
	if img == nil {
		return ""
	}
	if img.decoded == nil {
		return describe(img)
	}

	src := img.decoded.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 || width <= 0 {
		return describe(img)
	}
	if width > src.Dx() {
		width = src.Dx()
	}
	height := width * src.Dy() / src.Dx() / 2
	if height < 1 {
		height = 1
	}

	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(gray, gray.Bounds(), img.decoded, src, draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := gray.GrayAt(x, y).Y
			sb.WriteByte(ramp[int(v)*(len(ramp)-1)/255])
		}
		if y < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func describe(img *Image) string {
	parts := []string{strings.ToUpper(img.Format)}
	if img.Modality != "" {
		parts = append(parts, img.Modality)
	}
	if img.BodyPart != "" {
		parts = append(parts, img.BodyPart)
	}
	if img.Width > 0 && img.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", img.Width, img.Height))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
