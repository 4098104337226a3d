// Package files locates battery archives on disk.
//
// Discovery finds .mat archives in a directory, either every well-named
// archive (FindArchives) or ad-hoc glob matches (FindByPattern). Archive
// order is by name, which for the B00NN naming convention is also battery
// order.
package files
