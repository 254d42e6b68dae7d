package s3

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/unbox-app/unbox/internal/common"
)

func testConfig() Config {
	return Config{
		Region:        "us-east-1",
		AccessKey:     "ak",
		SecretKey:     "sk",
		BaseEndpoint:  "http://localhost:9000",
		Bucket:        "cards",
		PublicBaseURL: "http://localhost:9000/",
	}
}

func TestUploadDataURL_PassesThroughNonDataURLs(t *testing.T) {
	u := NewUploader(testConfig())

	for _, s := range []string{"", "https://cdn.example.com/a.jpg"} {
		got, err := u.UploadDataURL(context.Background(), s)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", s, err)
		}
		if got != s {
			t.Fatalf("UploadDataURL(%q) = %q, want unchanged", s, got)
		}
	}
}

func TestUploadDataURL_StoresObject(t *testing.T) {
	u := NewUploader(testConfig())

	var gotKey, gotBucket, gotContentType string
	var gotBody []byte

	origPut := putObject
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		gotContentType = aws.ToString(in.ContentType)
		var err error
		gotBody, err = io.ReadAll(in.Body)
		return &s3.PutObjectOutput{}, err
	}
	defer func() { putObject = origPut }()

	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	url, err := u.UploadDataURL(context.Background(), dataURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBucket != "cards" {
		t.Fatalf("bucket = %q", gotBucket)
	}
	if !strings.HasPrefix(gotKey, "cards/") || !strings.HasSuffix(gotKey, ".png") {
		t.Fatalf("key = %q", gotKey)
	}
	if gotContentType != "image/png" {
		t.Fatalf("content type = %q", gotContentType)
	}
	if string(gotBody) != string(payload) {
		t.Fatalf("body = %v", gotBody)
	}
	if want := "http://localhost:9000/cards/" + gotKey; url != want {
		t.Fatalf("url = %q, want %q", url, want)
	}
}

func TestUploadDataURL_PutError(t *testing.T) {
	u := NewUploader(testConfig())

	origPut := putObject
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("denied")
	}
	defer func() { putObject = origPut }()

	_, err := u.UploadDataURL(context.Background(), "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString([]byte("x")))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantCT  string
		wantErr bool
	}{
		{"png", "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("abc")), "image/png", false},
		{"no comma", "data:image/png;base64", "", true},
		{"not base64 encoding", "data:image/png;utf8,abc", "", true},
		{"bad payload", "data:image/png;base64,!!!", "", true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ct, _, err := parseDataURL(tc.in)
			if tc.wantErr {
				if !errors.Is(err, common.ErrValidation) {
					t.Fatalf("want ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ct != tc.wantCT {
				t.Fatalf("content type = %q, want %q", ct, tc.wantCT)
			}
		})
	}
}

func TestExtForContentType(t *testing.T) {
	if got := extForContentType("image/png"); got != "png" {
		t.Fatalf("png ext = %q", got)
	}
	if got := extForContentType("image/jpeg"); got != "jpg" {
		t.Fatalf("jpeg ext = %q", got)
	}
	if got := extForContentType("application/pdf"); got != "jpg" {
		t.Fatalf("fallback ext = %q", got)
	}
}
