// Package model defines the typed UiSpec document consumed by renderers: a
// closed grammar of node kinds (Stage, Grid, Card, Media, Heading, Text,
// Button) carrying tagged slots (title, body, cta, media). Values of these
// types are only produced by the validation gate or the fallback synthesizer,
// so renderers may assume the invariants documented on UiSpec hold. The read
// helpers in this package (CardTitle, CardBody, CardCTA, CardMedia) implement
// the two-level lookup shared by the pipeline's card checks and the visual
// renderer: a Card's own slots first, then its Heading/Text/Button children.
package model
