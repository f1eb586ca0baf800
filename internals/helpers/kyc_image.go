package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	kycMaxUploadBytes = 5 << 20 // 5MB raw upload cap
	kycMaxDimension   = 1600    // longest side after downscale
	kycWebPQuality    = 85
)

// UploadKYCImage converts a parent's KYC document photo (PAN card, income
// proof) to webp and pushes it to Supabase storage. Returns the public URL.
func UploadKYCImage(folder string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("cannot open uploaded file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, io.LimitReader(src, kycMaxUploadBytes+1)); err != nil {
		return "", fmt.Errorf("cannot read uploaded file: %w", err)
	}
	if buf.Len() > kycMaxUploadBytes {
		return "", fmt.Errorf("file exceeds %dMB", kycMaxUploadBytes>>20)
	}

	img, err := decodeKYCImage(buf.Bytes())
	if err != nil {
		return "", err
	}

	// downscale (keep aspect) so PAN photos from phones stay small
	b := img.Bounds()
	if b.Dx() > kycMaxDimension || b.Dy() > kycMaxDimension {
		img = imaging.Fit(img, kycMaxDimension, kycMaxDimension, imaging.CatmullRom)
	}

	webpBuf := new(bytes.Buffer)
	if err := webp.Encode(webpBuf, img, &webp.Options{Lossless: false, Quality: kycWebPQuality}); err != nil {
		return "", fmt.Errorf("webp encode failed: %w", err)
	}

	filename := generateUniqueFilename(folder, fileHeader.Filename) + ".webp"
	if err := uploadToSupabase("kyc", filename, "image/webp", webpBuf); err != nil {
		return "", fmt.Errorf("kyc upload failed: %w", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/kyc/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		url.PathEscape(filename),
	), nil
}

func decodeKYCImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	if ct == "image/webp" {
		return webp.Decode(bytes.NewReader(all))
	}
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %s", ct)
	}
	return img, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func generateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	safe := unsafeFilenameChars.ReplaceAllString(originalFilename, "_")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), safe)
}

func uploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) error {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL or SUPABASE_SERVICE_ROLE_KEY is not set")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
