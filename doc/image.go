package doc

// WrapStyle is the closed set of text-flow behaviors an anchored image can
// request. The layout core handles every variant exhaustively; there is no
// string fallthrough.
type WrapStyle int

const (
	WrapInline WrapStyle = iota // in-flow block, default
	WrapSquare                  // float: text flows beside the bounding box
	WrapTight                   // float: same flow model as square here
	WrapThrough                 // float: same flow model as square here
	WrapTopBottom               // in-flow block: text above and below only
	WrapBehind                  // flow-exempt: behind the text
	WrapInFront                 // flow-exempt: in front of the text
)

// HAlign is the explicit horizontal alignment of an image within the
// content area. It decides which side a floated image occupies.
type HAlign int

const (
	HAlignCenter HAlign = iota
	HAlignLeft
	HAlignRight
)

// Image describes one entry of the document image collection. Width, Height,
// X and Y are stored unscaled (100% zoom); the layout pass applies the
// current zoom where the flow model calls for it.
type Image struct {
	ID     string
	Src    string // external resource path, used by rendering collaborators
	Width  float64
	Height float64
	X      float64 // horizontal offset within the content area
	Y      float64 // vertical offset from the top of the content
	Wrap   WrapStyle
	Align  HAlign
}
