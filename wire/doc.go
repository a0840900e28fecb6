// Package wire implements the ccnb binary encoding: a self-describing token
// stream in which every element carries a numeric value and a 3-bit token
// type in its header. Composite elements open with a dictionary-tag (DTAG)
// header and close with a single zero byte.
//
// The Encoder and Decoder operate on in-memory buffers and expose both a raw
// token surface (BeginDTag/End/WriteBlob, Peek) and a convenience surface for
// the common "DTAG wrapping a single BLOB or UDATA" production
// (WriteDTagBinary, ReadDTagBinary, and friends). Higher layers consume the
// convenience surface through narrow consumer-defined interfaces.
package wire
