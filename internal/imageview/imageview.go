// Package imageview loads image files into raw RGB or RGBA pixel buffers
// and copies them into pitched surfaces for display.
package imageview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedChannels is returned for images that are neither RGB nor
// RGBA, such as grayscale.
var ErrUnsupportedChannels = errors.New("unsupported number of channels")

// Pixels is a decoded image with tightly packed rows of Width*Channels
// bytes, channels in R, G, B(, A) order.
type Pixels struct {
	Width    int
	Height   int
	Channels int // 3 or 4
	Format   string
	Data     []byte
}

// Decode reads the image file at path.
func Decode(path string) (*Pixels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()

	p, err := DecodeReader(f)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return p, nil
}

// DecodeReader decodes an image in any registered format.
func DecodeReader(r io.Reader) (*Pixels, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	ch := channels(img)
	if ch != 3 && ch != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, ch)
	}

	b := img.Bounds()
	p := &Pixels{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: ch,
		Format:   format,
		Data:     make([]byte, b.Dx()*b.Dy()*ch),
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			p.Data[i], p.Data[i+1], p.Data[i+2] = c.R, c.G, c.B
			if ch == 4 {
				p.Data[i+3] = c.A
			}
			i += ch
		}
	}
	return p, nil
}

// channels reports how many channels the file stored: 1 for gray, 3 for
// color without alpha, 4 when the format carries alpha.
func channels(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	case *image.RGBA:
		if m.Opaque() {
			return 3
		}
	case *image.RGBA64:
		if m.Opaque() {
			return 3
		}
	}
	return 4
}

// Surface is a pixel buffer whose rows may be padded: row y starts at
// y*Pitch and holds Width*BytesPerPixel meaningful bytes.
type Surface struct {
	Width         int
	Height        int
	BytesPerPixel int
	Pitch         int
	Pix           []byte
}

// NewSurface allocates a zeroed surface. A zero pitch means packed rows.
func NewSurface(width, height, bpp, pitch int) (*Surface, error) {
	if bpp != 3 && bpp != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, bpp)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if pitch == 0 {
		pitch = width * bpp
	}
	if pitch < width*bpp {
		return nil, fmt.Errorf("pitch %d shorter than a %d-byte row", pitch, width*bpp)
	}
	return &Surface{
		Width:         width,
		Height:        height,
		BytesPerPixel: bpp,
		Pitch:         pitch,
		Pix:           make([]byte, pitch*height),
	}, nil
}

// ToSurface copies the pixels row by row into a new surface with the
// given pitch.
func (p *Pixels) ToSurface(pitch int) (*Surface, error) {
	s, err := NewSurface(p.Width, p.Height, p.Channels, pitch)
	if err != nil {
		return nil, err
	}
	row := p.Width * p.Channels
	for y := 0; y < p.Height; y++ {
		copy(s.Pix[y*s.Pitch:y*s.Pitch+row], p.Data[y*row:(y+1)*row])
	}
	return s, nil
}

// Image converts the surface for display. RGB surfaces become opaque.
func (s *Surface) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		src := s.Pix[y*s.Pitch:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < s.Width; x++ {
			si, di := x*s.BytesPerPixel, x*4
			dst[di], dst[di+1], dst[di+2] = src[si], src[si+1], src[si+2]
			dst[di+3] = 255
			if s.BytesPerPixel == 4 {
				dst[di+3] = src[si+3]
			}
		}
	}
	return img
}

// Fit scales a w×h image to fill as much of a winW×winH window as it can
// without distortion and returns the scale and the offset centering it.
func Fit(w, h, winW, winH int) (scale, offX, offY float64) {
	if w <= 0 || h <= 0 || winW <= 0 || winH <= 0 {
		return 0, 0, 0
	}
	scale = min(float64(winW)/float64(w), float64(winH)/float64(h))
	offX = (float64(winW) - float64(w)*scale) / 2
	offY = (float64(winH) - float64(h)*scale) / 2
	return scale, offX, offY
}
