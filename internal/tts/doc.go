// Package tts defines the speech-synthesis contract the pipeline depends on
// and the batch dispatcher that fans unique sentences out to it.
//
// The Service interface covers the two backend calls parrot needs: listing
// the voice catalog and synthesizing one sentence to audio bytes. The AWS
// Polly adapter is the production implementation; a scripted in-memory
// implementation backs the tests.
package tts
