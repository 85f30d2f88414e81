// Package generate drives the card-generation pipeline: read the source
// rows, build the deduplicated work bundle, select a voice, fan the unique
// sentences out to the speech backend, then reassemble results onto every
// surviving row in source order while writing each audio artifact once.
//
// The whole run is all-or-nothing. Any failure aborts with a single error;
// an aborted run may leave audio files behind but never a target file that
// references audio that was not written.
package generate
