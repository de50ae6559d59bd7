// Package style assigns reproducible visual encodings to sample groups.
//
// # Key spaces
//
// Three kinds of group key share the [Maps] lookups:
//
//   - type keys: one categorical value, e.g. "MORB"
//   - compound keys: "{type}|{location}", see [CompoundKey]
//   - arbitrary keys: values of any grouping column, bin labels, or nested
//     "{category}|{bin}" keys
//
// [Build] produces colors keyed by compound key and symbols and sizes keyed
// by type. [Derive] re-keys those maps when the active grouping changes.
//
// # Determinism
//
// Procedural colors and symbols come from a PCG generator seeded with
// [PaletteSeed] and created fresh for every call, so the same dataset always
// yields the same maps. Known types take their seed from a [BaseTable].
//
// # Defaults
//
// Lookups that miss fall back to [Defaults] (color #1f77b4, symbol circle,
// size 20, opacity 0.9). These are substituted silently; partial styling is
// a normal state while groups are still being configured.
package style
