package httpx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "audioknigi-dl" {
			t.Errorf("User-Agent = %q, want %q", ua, "audioknigi-dl")
		}
		w.Write([]byte("chapter bytes"))
	}))
	defer srv.Close()

	client := NewClient("audioknigi-dl", 0)
	data, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "chapter bytes" {
		t.Errorf("Get = %q, want %q", data, "chapter bytes")
	}
}

func TestClient_Get_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient("audioknigi-dl", 0)
	if _, err := client.Get(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestClient_Download(t *testing.T) {
	payload := bytes.Repeat([]byte("abc"), 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	var lastWritten, lastTotal int64

	client := NewClient("audioknigi-dl", 0)
	n, err := client.Download(context.Background(), srv.URL, &buf, func(written, total int64) {
		lastWritten, lastTotal = written, total
	})
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	if n != int64(len(payload)) {
		t.Errorf("Download returned %d bytes, want %d", n, len(payload))
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Error("downloaded bytes differ from served payload")
	}
	if lastWritten != int64(len(payload)) {
		t.Errorf("final progress written = %d, want %d", lastWritten, len(payload))
	}
	if lastTotal != int64(len(payload)) {
		t.Errorf("progress total = %d, want %d", lastTotal, len(payload))
	}
}

func TestClient_Download_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	client := NewClient("audioknigi-dl", 0)
	if _, err := client.Download(context.Background(), srv.URL, &buf, nil); err == nil {
		t.Error("expected error for 500 response")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on a failed download")
	}
}

func TestClient_GetFileSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Length", "12345")
	}))
	defer srv.Close()

	client := NewClient("audioknigi-dl", 0)
	size, err := client.GetFileSize(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetFileSize: %v", err)
	}
	if size != 12345 {
		t.Errorf("GetFileSize = %d, want 12345", size)
	}
}
