package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/disintegration/imaging"

	"skitourspots/internal/model"
)

// pngSignature is enough for content sniffing without a full image payload.
var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func uploadPart(t *testing.T, contentType string, body []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, "photo.png"))
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(body); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/media/images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, fileHeader, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return file, fileHeader
}

func TestReadAndValidateImage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        []byte
		maxSize     int64
		wantErr     error
	}{
		{
			name:        "declared content type accepted",
			contentType: "image/jpeg",
			body:        bytes.Repeat([]byte{0xff}, 64),
			maxSize:     model.MaxImageSizeBytes,
		},
		{
			name:        "content type parameters stripped",
			contentType: "image/png; charset=utf-8",
			body:        pngSignature,
			maxSize:     model.MaxImageSizeBytes,
		},
		{
			name:    "short payload sniffed from magic bytes",
			body:    pngSignature,
			maxSize: model.MaxImageSizeBytes,
		},
		{
			name:        "unsupported type rejected",
			contentType: "text/plain",
			body:        []byte("definitely not an image"),
			maxSize:     model.MaxImageSizeBytes,
			wantErr:     model.ErrInvalidImageType,
		},
		{
			name:        "oversize upload rejected",
			contentType: "image/jpeg",
			body:        bytes.Repeat([]byte{0xff}, 64),
			maxSize:     16,
			wantErr:     model.ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, header := uploadPart(t, tt.contentType, tt.body)
			defer file.Close()

			data, err := readAndValidateImage(file, header, tt.maxSize)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(data, tt.body) {
				t.Fatalf("returned data does not match upload")
			}
		})
	}
}

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeJPEG_DownscalesWideImages(t *testing.T) {
	data := encodeTestPNG(t, 64, 8)

	out, err := encodeJPEG(data, 32, 85)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got := img.Bounds().Dx(); got != 32 {
		t.Errorf("expected width 32, got %d", got)
	}
}

func TestEncodeJPEG_KeepsNarrowImages(t *testing.T) {
	data := encodeTestPNG(t, 20, 10)

	out, err := encodeJPEG(data, 32, 85)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got := img.Bounds().Dx(); got != 20 {
		t.Errorf("expected width 20, got %d", got)
	}
}

func TestEncodeJPEG_RejectsGarbage(t *testing.T) {
	if _, err := encodeJPEG([]byte("not an image"), 32, 85); err == nil {
		t.Fatal("expected decode error")
	}
}
