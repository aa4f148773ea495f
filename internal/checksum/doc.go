// Package checksum fingerprints source files with SHA-256.
//
// A Reader hashes bytes as they stream through it, so the file is read once
// for both parsing and fingerprinting:
//
//	hr := checksum.NewReader(f)
//	// ... consume hr to EOF ...
//	sum := hr.Sum()
//
// The fingerprint is attached to the import result and logged, which ties a
// loaded table to the exact file that produced it.
package checksum
