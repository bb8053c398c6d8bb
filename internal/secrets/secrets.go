// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads discovery-service tokens from a directory of
// plain-text files. Each file is one secret: the filename is the key name
// and the trimmed contents are the value.
//
// Recognized key files: eds-session-token, eds-auth-token, eds-profile.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// headerFor maps recognized key files to the request header carrying them.
var headerFor = map[string]string{
	"eds-session-token": "x-sessionToken",
	"eds-auth-token":    "x-authenticationToken",
	"eds-profile":       "x-profile",
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings and skipped.
func Load(dir string, log logrus.FieldLogger) (map[string]string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.WithError(err).WithField("secret", name).Warn("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Headers converts recognized secrets into request headers. Unrecognized
// keys are ignored.
func Headers(secrets map[string]string) map[string]string {
	h := make(map[string]string)
	for name, value := range secrets {
		if header, ok := headerFor[name]; ok {
			h[header] = value
		}
	}
	return h
}

// Known lists the recognized key file names.
func Known() []string {
	names := make([]string, 0, len(headerFor))
	for name := range headerFor {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
