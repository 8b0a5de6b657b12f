// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the signing configuration.
//
// A configuration names the signing tool, the fixed arguments passed before every file and the
// glob patterns selecting the files:
//
//	{
//	  "signTool": "signtool",
//	  "args": ["sign", "/fd", "sha256"],
//	  "include": ["dist/**/*.exe"]
//	}
//
// The source may be a local path or any go-getter URL. The format is chosen from the file
// extension: `.json`, `.yaml`/`.yml`, `.toml` or `.hcl`. HCL files can read environment variables through
// the `env` object, e.g. `sign_tool = env.SIGNTOOL`.
package config
