package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

var windowsEnvVar = regexp.MustCompile(`%([^%]+)%`)

// ExpandPath resolves environment variables and a leading "~" in p. It is
// used for db_path and --config. On Windows
// %VAR% references are expanded as well; unknown ones are kept verbatim.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = windowsEnvVar.ReplaceAllStringFunc(p, func(m string) string {
			if v, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
				return v
			}
			return m
		})
	}
	return ExpandHome(p)
}

// ExpandHome resolves only a leading "~" in p. File arguments go through
// here so that a literal "$" in a file name is kept.
func ExpandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok {
		return p
	}
	if rest != "" && rest[0] != '/' && !(runtime.GOOS == "windows" && rest[0] == '\\') {
		// "~user" forms are not supported.
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
