// Package flatpack bundles a flat list of files into a single container and
// extracts them again.
//
// A container is deliberately simple:
//
//	total size   uint64, big-endian, length of the whole container
//	entry...     repeated until the total size is reached
//
// and each entry is
//
//	name         base name of the file, UTF-8, NUL-terminated
//	size         uint64, big-endian, length of the data
//	data         raw file content
//
// There is no magic number, version, entry count, compression, or checksum.
// The leading total size is written last, by seeking back once all entries
// are in place.
//
// # Packing
//
//	a := flatpack.NewArchive()
//	for _, p := range paths {
//	    if err := a.Put(p); err != nil {
//	        return err
//	    }
//	}
//	n, err := a.Pack(ctx, "out.arch")
//
// Entries are packed in path-sorted order unless WithOrder(OrderInsertion)
// is given. Only base names are stored, so two files with the same name in
// different directories collide; see CollisionPolicy.
//
// # Unpacking
//
//	err := flatpack.Unpack(ctx, "out.arch", "extracted")
//
// Unpack creates the destination directory if needed and overwrites files
// that already exist there. Each file is written through a temporary file and
// renamed into place, so a corrupt container never leaves a half-written
// entry behind.
package flatpack
