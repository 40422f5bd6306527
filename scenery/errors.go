// scenery/errors.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import "errors"

var (
	ErrNoLibraryPack     = errors.New("no openSAM_Library pack found in scenery_packs.ini")
	ErrUnparseableRoot   = errors.New("unparseable manifest root element")
	ErrEmptyScenery      = errors.New("scenery has no jetways, stands, or animated objects")
	ErrDuplicateTemplate = errors.New("duplicate library jetway template id")
)
