// Package printing turns receipt documents into shareable artifacts.
//
// A Sink lays a receipt.Document out as HTML with the TemplateEngine,
// optionally prints it to PDF through a PDFRenderer (ChromedpRenderer in
// production) and publishes the result to an ArtifactStore such as the
// FileSystemStore or the S3 store of the storage package:
//
//	sink := NewSink(NewTemplateEngine(), renderer, store, logger)
//	artifact, err := sink.RenderDocument(ctx, doc)
//	...
//	shared, err := sink.Share(ctx, artifact, "application/pdf", "NFC-e")
package printing
