// Package pipeline holds the text stages of the viewer.
//
//   - Format re-indents XML, one tag per line, without validating it.
//   - Highlight escapes XML and splits it into styled spans; RenderHTML,
//     WriteChromaHTML and WriteTerminal render those spans.
//   - PlainText recovers the escaped text from rendered span markup.
//   - GoldmarkConverter and CSSInjection build the HTML page that the root
//     package prints to PDF.
//
// Every stage is total over arbitrary input: malformed XML is formatted and
// highlighted as well as it can be and never produces an error.
package pipeline
