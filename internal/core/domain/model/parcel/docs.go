// Package parcel describes what is being shipped (PackageSpec) and how
// (ServiceOptions). Both are plain values: they are edited freely while a draft is
// being filled in and only validated when the sender submits them.
package parcel
