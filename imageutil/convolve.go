package imageutil

import "math"

// Plane is a single-channel float image used for intermediate results
// such as gradients, stored row-major.
type Plane struct {
	Width  int
	Height int
	Values []float64
}

// NewPlane creates a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// PlaneFromGray copies a gray image into a plane.
func PlaneFromGray(img *GrayImage) *Plane {
	width, height := img.Width(), img.Height()
	b := img.Bounds()
	p := NewPlane(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p.Values[y*width+x] = float64(img.GetGray(b.Min.X+x, b.Min.Y+y))
		}
	}
	return p
}

// At returns the value at (x, y).
func (p *Plane) At(x, y int) float64 {
	return p.Values[y*p.Width+x]
}

// Set stores v at (x, y).
func (p *Plane) Set(x, y int, v float64) {
	p.Values[y*p.Width+x] = v
}

// ToGray rounds and clamps the plane into a gray image.
func (p *Plane) ToGray() *GrayImage {
	img := NewGrayImage(p.Width, p.Height)
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			img.Pix[y*img.Stride+x] = clampUint8(p.At(x, y))
		}
	}
	return img
}

// Kernel represents a convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// GaussianKernel5x5 returns a 5x5 Gaussian blur kernel with sigma ~1.4.
func GaussianKernel5x5() *Kernel {
	return NewKernel([][]float64{
		{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
		{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
		{5.0 / 159, 12.0 / 159, 15.0 / 159, 12.0 / 159, 5.0 / 159},
		{4.0 / 159, 9.0 / 159, 12.0 / 159, 9.0 / 159, 4.0 / 159},
		{2.0 / 159, 4.0 / 159, 5.0 / 159, 4.0 / 159, 2.0 / 159},
	})
}

// SobelX returns the horizontal Sobel kernel.
func SobelX() *Kernel {
	return NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
}

// SobelY returns the vertical Sobel kernel.
func SobelY() *Kernel {
	return NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
}

// Convolve applies a kernel to a plane without clamping.
// Border pixels are handled by replicating edge values.
func Convolve(src *Plane, kernel *Kernel) *Plane {
	width, height := src.Width, src.Height
	dst := NewPlane(width, height)

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64

			for ky := 0; ky < kernel.Height; ky++ {
				for kx := 0; kx < kernel.Width; kx++ {
					sx := clampInt(x+kx-halfKW, 0, width-1)
					sy := clampInt(y+ky-halfKH, 0, height-1)

					sum += src.At(sx, sy) * kernel.Values[ky][kx]
				}
			}

			dst.Set(x, y, sum)
		}
	}

	return dst
}

// ConvolveGray applies a kernel to a gray image, clamping to [0, 255].
func ConvolveGray(img *GrayImage, kernel *Kernel) *GrayImage {
	return Convolve(PlaneFromGray(img), kernel).ToGray()
}

// GaussianBlurGray applies a 5x5 Gaussian blur to a gray image.
func GaussianBlurGray(img *GrayImage) *GrayImage {
	return ConvolveGray(img, GaussianKernel5x5())
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
