package picker

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Exit statuses treated as "user closed the dialog": zenity/kdialog use 1, fzf uses 130.
var cancelExitCodes = map[int]bool{1: true, 130: true}

// commandPicker runs an external file chooser and reads the chosen path from stdout.
type commandPicker struct {
	name string
	args []string
}

// NewCommandPicker creates a picker that runs name with args, e.g.
// "zenity --file-selection --file-filter=*.png *.jpg *.jpeg". An empty name yields
// the Unavailable picker.
func NewCommandPicker(name string, args ...string) ImagePicker {
	if strings.TrimSpace(name) == "" {
		return Unavailable
	}
	return &commandPicker{name: name, args: args}
}

// Pick runs the chooser. Each line of stdout is one picked path; blank output or a
// cancel exit status is a cancellation.
func (p *commandPicker) Pick(ctx context.Context, opts Options) (Result, error) {
	cmd := exec.CommandContext(ctx, p.name, p.args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && cancelExitCodes[exitErr.ExitCode()] && ctx.Err() == nil {
			// zenity and kdialog also exit 1 when they fail to start; only stderr tells them apart.
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				log.Printf("WARN: Image picker %s exited with status %d: %s", p.name, exitErr.ExitCode(), msg)
			}
			return Result{Cancelled: true}, nil
		}
		return Result{}, fmt.Errorf("run %s: %w (%s)", p.name, err, strings.TrimSpace(stderr.String()))
	}

	var assets []Asset
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		uri, err := toURI(line)
		if err != nil {
			return Result{}, err
		}
		if opts.Mode == MediaImages {
			if err := checkImage(uri); err != nil {
				return Result{}, err
			}
		}
		assets = append(assets, Asset{URI: uri})
	}
	if err := scanner.Err(); err != nil {
		return Result{}, err
	}
	if len(assets) == 0 {
		return Result{Cancelled: true}, nil
	}
	return Result{Assets: assets}, nil
}

// toURI turns a bare path into a file:// URI; values that already carry a scheme pass through.
func toURI(s string) (string, error) {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return s, nil
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// checkImage sniffs local files; non-file URIs cannot be inspected and are accepted.
func checkImage(uri string) error {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return nil
	}
	mt, err := mimetype.DetectFile(filepath.FromSlash(u.Path))
	if err != nil {
		return fmt.Errorf("inspect %s: %w", u.Path, err)
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		log.Printf("WARN: Picked file %s has type %s", u.Path, mt.String())
		return ErrNotAnImage
	}
	return nil
}
