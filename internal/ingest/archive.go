// Package ingest acquires the Lovdata public-data corpus: it downloads the
// published archives, unpacks them, and parses the contained XML documents
// into retrievable chunks.
package ingest

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DownloadArchive fetches baseURL+filename into destDir unless it is already
// present. force re-downloads. Returns the local path.
func DownloadArchive(ctx context.Context, client *http.Client, baseURL, filename, destDir string, force bool) (string, error) {
	dest := filepath.Join(destDir, filename)
	if err := downloadFile(ctx, client, baseURL+filename, dest, force); err != nil {
		return "", err
	}
	return dest, nil
}

// DownloadPrebuilt fetches a ready-made chunk database into destDir, named
// after the last URL path element. Returns the local path.
func DownloadPrebuilt(ctx context.Context, client *http.Client, rawURL, destDir string, force bool) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("prebuilt index url: %w", err)
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		name = "prebuilt.db"
	}
	dest := filepath.Join(destDir, name)
	if err := downloadFile(ctx, client, rawURL, dest, force); err != nil {
		return "", err
	}
	return dest, nil
}

// downloadFile fetches url into dest unless dest already exists; force
// re-downloads. The write goes through a .part file so an interrupted
// download never leaves a truncated dest behind.
func downloadFile(ctx context.Context, client *http.Client, srcURL, dest string, force bool) error {
	if client == nil {
		client = http.DefaultClient
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o700); err != nil {
		return err
	}
	if _, err := os.Stat(dest); err == nil {
		if !force {
			log.Printf("ingest: %s already present", filepath.Base(dest))
			return nil
		}
		if err := os.Remove(dest); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", srcURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", srcURL, resp.Status)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("save %s: %w", filepath.Base(dest), err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return err
	}
	log.Printf("ingest: saved %s", dest)
	return nil
}

// ExtractArchive unpacks a .tar, .tar.gz/.tgz or .tar.bz2 archive into a
// directory named after the archive under destRoot and returns that
// directory. Entries escaping the target directory are rejected.
func ExtractArchive(archivePath, destRoot string) (string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	name := strings.ToLower(filepath.Base(archivePath))
	switch {
	case strings.HasSuffix(name, ".tar.bz2"):
		r = bzip2.NewReader(f)
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(name, ".tar"):
	default:
		return "", fmt.Errorf("unsupported archive format: %s", name)
	}

	dest := filepath.Join(destRoot, archiveStem(name))
	if err := os.MkdirAll(dest, 0o700); err != nil {
		return "", err
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		target, err := securePath(dest, hdr.Name)
		if err != nil {
			return "", err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o700); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
				return "", err
			}
			out, err := os.Create(target)
			if err != nil {
				return "", err
			}
			if _, err := io.Copy(out, tr); err != nil {
				_ = out.Close()
				return "", fmt.Errorf("extract %s: %w", hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return "", err
			}
		}
		// Links and special files are skipped; the corpus is plain files.
	}
	return dest, nil
}

func archiveStem(name string) string {
	for _, suf := range []string{".tar.bz2", ".tar.gz", ".tgz", ".tar"} {
		if strings.HasSuffix(name, suf) {
			return strings.TrimSuffix(name, suf)
		}
	}
	return name
}

func securePath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}
