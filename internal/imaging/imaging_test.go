package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func createTestGIF(w, h int) []byte {
	img := image.NewPaletted(image.Rect(0, 0, w, h), color.Palette{color.White, color.Black})
	var buf bytes.Buffer
	gif.Encode(&buf, img, nil)
	return buf.Bytes()
}

func TestProcessJPEG(t *testing.T) {
	data := createTestJPEG(100, 100)
	result, err := Process(data, ".jpg")
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if len(result) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNGKeepsFormat(t *testing.T) {
	data := createTestPNG(3000, 100)
	result, err := Process(data, ".png")
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if format != "png" {
		t.Errorf("expected png output, got %s", format)
	}
}

func TestProcessGIFPassthrough(t *testing.T) {
	data := createTestGIF(10, 10)
	result, err := Process(data, ".gif")
	if err != nil {
		t.Fatalf("Process GIF: %v", err)
	}
	if !bytes.Equal(result, data) {
		t.Error("expected GIF data to pass through unchanged")
	}
}

func TestProcessDownscale(t *testing.T) {
	data := createTestJPEG(MaxDimension+1000, MaxDimension+1000)
	result, err := Process(data, ".jpeg")
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSmallImageUntouched(t *testing.T) {
	data := createTestJPEG(50, 50)
	result, err := Process(data, ".jpg")
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}
	if !bytes.Equal(result, data) {
		t.Error("small image should not be re-encoded")
	}
}

func TestProcessExtensionMismatch(t *testing.T) {
	data := createTestPNG(10, 10)
	if _, err := Process(data, ".jpg"); err == nil {
		t.Error("expected error for PNG content with .jpg extension")
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	if _, err := Process([]byte("not an image"), ".png"); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessUnknownExtension(t *testing.T) {
	data := createTestJPEG(10, 10)
	if _, err := Process(data, ".bmp"); err == nil {
		t.Error("expected error for unknown extension")
	}
}
