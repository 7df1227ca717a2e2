// Package sheet builds printable question sheets.
//
// A sheet is an HTML5 document produced from the embedded sheet template:
//   - the title and an optional Markdown introduction
//   - the rendered questions with their choices
//   - explanations, when answers are shown
//   - the sheet stylesheet and any extra CSS, injected into <head>
//
// Question fields arrive already rendered and sanitized (see quiz.RenderAll),
// so they are inserted verbatim. The introduction is converted with goldmark
// and passed through the same sanitizer before insertion.
package sheet
