// Package io reads and writes style documents.
//
// # Format
//
// A style document is a flat JSON object. Keys are group keys in whichever
// key space is active; values hold the known attributes of that group:
//
//	{
//	  "MORB|Pacific": {
//	    "color": "#444444",
//	    "symbol": "circle",
//	    "size": 15,
//	    "opacity": 0.9,
//	    "outline_color": "#000000",
//	    "outline_width": 1
//	  },
//	  "OIB|Hawaii": {"color": "#0060ff"}
//	}
//
// Every field is optional and absent fields are simply omitted. There is no
// envelope and no version field.
//
// # Export
//
// [FromMaps] collects the known attributes of a set of groups, and
// [WriteJSON] / [ExportJSON] encode the result with two-space indentation and
// sorted keys.
//
// # Import
//
// [ReadJSON] / [ImportJSON] decode and validate a document. [Apply] patches
// maps with it: only attributes present in the document are written. For
// compound keys, symbol and size go to the type before the first "|", while
// color, opacity and outline stay on the full key.
//
// Import never modifies the maps it is given. A malformed document is
// reported as [errors.ErrCodeInvalidStyleDocument] and the caller keeps
// its previous maps.
package io
