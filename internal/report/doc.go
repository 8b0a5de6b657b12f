// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report persists, reads and displays the results of a signing batch.
//
// A report maps each file path to its record:
//
//	{
//	  "a.txt": {
//	    "code": 0,
//	    "msg": "signed: a.txt"
//	  }
//	}
//
// Reports are written as indented JSON by default, or as YAML.
package report
