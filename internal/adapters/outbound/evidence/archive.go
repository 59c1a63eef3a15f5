package evidence

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// compressBundle tars and gzips bundleDir into <bundleDir>.tar.gz and
// removes the uncompressed directory. Paths are sorted and header
// metadata pinned so identical content yields an identical archive.
func compressBundle(bundleDir string) (string, error) {
	archivePath := bundleDir + ".tar.gz"

	var files []string
	err := filepath.Walk(bundleDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking bundle: %w", err)
	}
	sort.Strings(files)

	out, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("creating archive: %w", err)
	}

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	// Deferred closes cover error paths; the happy path closes explicitly
	// below so the archive is flushed before the source dir is removed.
	defer out.Close()
	defer gw.Close()
	defer tw.Close()

	base := filepath.Base(bundleDir)
	for _, path := range files {
		rel, err := filepath.Rel(bundleDir, path)
		if err != nil {
			return "", err
		}

		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}

		hdr := &tar.Header{
			Name: filepath.ToSlash(filepath.Join(base, rel)),
			Mode: 0o644,
			Size: info.Size(),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return "", fmt.Errorf("writing tar header for %s: %w", rel, err)
		}

		in, err := os.Open(path)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(tw, in); err != nil {
			in.Close()
			return "", fmt.Errorf("archiving %s: %w", rel, err)
		}
		in.Close()
	}

	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gw.Close(); err != nil {
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if err := os.RemoveAll(bundleDir); err != nil {
		return "", fmt.Errorf("removing uncompressed bundle: %w", err)
	}
	return archivePath, nil
}
