// Package transcode copies a streaming archive into a new archive named after
// a clone.
//
// Every entry of the source archive is dispatched on its extension:
//
//	.sim_pc                           rewrite the embedded name, store as <new>.sim_pc
//	mesh, rig, peg and matlib kinds   copy bytes, store as <new><ext>
//	.cvbm_pc/.gvbm_pc named ui_hud*   drop from archive and container
//	other .cvbm_pc/.gvbm_pc           copy bytes, keep the name
//	.cefct_pc/.gefct_pc               copy bytes, keep the name
//	anything else                     UnrecognizedKindError
//
// A missing archive, or an archive with no container in the asset-group
// search list, is a normal outcome reported as found=false. The container is
// copied, renamed to the new base name and its primitive sizes refreshed from
// the new archive. New archives are always compressed and condensed.
package transcode
