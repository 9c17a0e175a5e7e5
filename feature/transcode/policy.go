package transcode

import (
	"fmt"
	"path"
	"strings"
)

// Action is what happens to an archive entry when it is copied into a clone.
type Action string

const (
	// ActionRewrite decodes a cloth simulation, renames it and stores it under the new base name.
	ActionRewrite Action = "rewrite"
	// ActionRename copies the bytes and stores them under the new base name.
	ActionRename Action = "rename"
	// ActionKeep copies the bytes under the original name.
	ActionKeep Action = "keep"
	// ActionDrop leaves the entry out of both the archive and its container.
	ActionDrop Action = "drop"
)

// uiIconPrefix marks texture bundles holding HUD icons. Icons ship as a
// separate always-loaded resource and are never packed per clone.
const uiIconPrefix = "ui_hud"

var policy = map[string]Action{
	".sim_pc":    ActionRewrite,
	".ccmesh_pc": ActionRename,
	".gcmesh_pc": ActionRename,
	".cpeg_pc":   ActionRename,
	".gpeg_pc":   ActionRename,
	".csmesh_pc": ActionRename,
	".gsmesh_pc": ActionRename,
	".matlib_pc": ActionRename,
	".rig_pc":    ActionRename,
	".cvbm_pc":   ActionKeep,
	".gvbm_pc":   ActionKeep,
	".cefct_pc":  ActionKeep,
	".gefct_pc":  ActionKeep,
}

// UnrecognizedKindError reports an archive entry whose extension has no policy.
type UnrecognizedKindError struct {
	Archive string
	Entry   string
	Ext     string
}

func (e *UnrecognizedKindError) Error() string {
	return fmt.Sprintf("archive %s: unrecognized entry kind %q (%s)", e.Archive, e.Ext, e.Entry)
}

// Classify returns the action for an entry name.
func Classify(archive, entry string) (Action, error) {
	ext := strings.ToLower(path.Ext(entry))
	action, ok := policy[ext]
	if !ok {
		return "", &UnrecognizedKindError{Archive: archive, Entry: entry, Ext: ext}
	}
	if (ext == ".cvbm_pc" || ext == ".gvbm_pc") && strings.HasPrefix(strings.ToLower(entry), uiIconPrefix) {
		return ActionDrop, nil
	}
	return action, nil
}
