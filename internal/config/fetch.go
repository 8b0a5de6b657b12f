// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/batchsign/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrGetConfigFile is returned when the configuration cannot be read from its source.
var ErrGetConfigFile = errors.New("configuration file cannot be read")

// FsFactory returns the filesystem local configuration files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// Fetch reads the configuration at src and returns its file name and content.
// Local paths are read through FsFactory, anything else is downloaded with go-getter.
func Fetch(ctx context.Context, src string) (string, []byte, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil, fmt.Errorf("%w: empty source", ErrGetConfigFile)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", nil, errors.Join(ErrGetConfigFile, err)
	}

	req := &getter.Request{
		Src: src,
		Pwd: wd,
	}

	if ok, err := getter.Detect(req, &getter.FileGetter{}); ok && err == nil {
		local := strings.TrimPrefix(req.Src, "file://")
		ctxlog.Debug(ctx, "reading local configuration", "path", local)

		data, err := afero.ReadFile(FsFactory(), local)
		if err != nil {
			return "", nil, errors.Join(ErrGetConfigFile, err)
		}

		return filepath.Base(local), data, nil
	}

	return download(ctx, src, wd)
}

// download fetches a remote configuration into a temporary directory and reads it back.
// Sources using the go-getter subdirectory syntax (`git::https://host/repo//file.json?ref=v1`)
// are fetched as a directory, plain URLs as a single file.
func download(ctx context.Context, src, wd string) (string, []byte, error) {
	tmpDir, err := os.MkdirTemp("", "batchsign-getter-*")
	if err != nil {
		return "", nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src: src,
		Pwd: wd,
	}

	var fileName string

	if newURL, name := splitFileNameFromGetterURL(src); newURL != "" {
		req.Src = newURL
		req.Dst = filepath.Join(tmpDir, "g")
		req.GetMode = getter.ModeDir
		fileName = name
	} else {
		fileName = fileNameFromURL(src)
		if fileName == "" {
			return "", nil, fmt.Errorf("%w: cannot determine file name from %s", ErrGetConfigFile, src)
		}

		req.Dst = filepath.Join(tmpDir, fileName)
		req.GetMode = getter.ModeFile
	}

	ctxlog.Debug(ctx, "downloading configuration", "src", req.Src, "mode", req.GetMode)

	res, err := client.Get(ctx, req)
	if err != nil {
		return "", nil, errors.Join(ErrGetConfigFile, err)
	}

	target := res.Dst
	if req.GetMode == getter.ModeDir {
		target = filepath.Join(res.Dst, fileName)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "", nil, errors.Join(ErrGetConfigFile, err)
	}

	return fileName, data, nil
}

// splitFileNameFromGetterURL splits a go-getter subdirectory URL into the directory URL and the file name.
// The ref query, if any, is kept on the directory URL. Empty strings mean src is not of that form.
func splitFileNameFromGetterURL(src string) (string, string) {
	var ref string

	parts := strings.Split(src, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, ok := strings.Cut(last, goGetterRefSeparator); ok {
		ref = after
		last = before
	}

	if last == "" || strings.HasSuffix(last, "/") {
		return "", ""
	}

	fileName := path.Base(last)
	dir := path.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)
	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}

func fileNameFromURL(src string) string {
	_, raw, _ := strings.Cut(src, "::")
	if raw == "" {
		raw = src
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}

	return name
}
