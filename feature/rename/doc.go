// Package rename derives new identifiers for every record and asset of a
// closure.
//
// The base item (slot 0) takes the new base name verbatim. A prop takes its
// old mesh name with the base item's old mesh name replaced, case-insensitively,
// by the new base name, so "pistol_base_silencer" cloned from "pistol_base" as
// "zapgun" becomes "zapgun_silencer". When the prop's mesh name does not contain
// the base mesh name the prop falls back to the new base name verbatim and the
// item is flagged as degraded; two degraded props then share one name.
//
// PlanRenames is pure: the same closure and base name always yield the same
// plan. Apply writes a plan into the closure's detached records.
package rename
