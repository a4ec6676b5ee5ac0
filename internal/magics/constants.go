// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package magics

// Argument prefixes understood by the magic commands.
const (
	JSONPrefix   = "json://"
	FilePrefix   = "file://"
	GCSPrefix    = "gs://"
	PyPrefix     = "py://"
	PyListPrefix = "pylist://"
)

// Extension filters for the file:// and gs:// prefixes. Which set applies
// depends on the command flag the argument came from.
var (
	JSONFileExt      = []string{".json", ".ndjson"}
	WSTLFileExt      = []string{".wstl"}
	TextprotoFileExt = []string{".textproto"}
)

var supportedPrefixes = []string{JSONPrefix, FilePrefix, GCSPrefix, PyPrefix, PyListPrefix}
