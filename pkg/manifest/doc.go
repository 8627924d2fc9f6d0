/*
Package manifest implements the dotkeep manifest layer: the typed in-memory
model of conf.yaml, the token-expansion resolver for manifest locations, and
the content stripper that removes configuration groups and keys from copied
files.

A manifest has two top-level sections, "save" and "export". Each section maps
an entry name to a location plus the files and folders under that location to
copy. Locations are written with symbolic tokens:

	save:
	  kde:
	    location: "$CONFIG_DIR"
	    entries: [kdeglobals, kwinrc]
	    strip:
	      kdeglobals:
	        groups: [DirSelect Dialog]
	        keys: [ColorSchemeHash]
	export:
	  icons:
	    location: "$SHARE_DIR/icons"
	    entries: [Papirus]

Keyword tokens ($HOME, $CONFIG_DIR, $SHARE_DIR, $BIN_DIR) substitute literal
paths. Function tokens (${ENDS_WITH='x'}, ${BEGINS_WITH='x'}) list the
directory implied by the text preceding the token and substitute the first
entry whose name satisfies the predicate.

The package performs no copying itself. It resolves locations, models the
manifest, and rewrites file content; the profile store drives the actual I/O.
*/
package manifest
