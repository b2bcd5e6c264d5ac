package negotiate

// Format is the representation chosen for a response.
type Format string

const (
	FormatHTML   Format = "html"
	FormatMobile Format = "mobile"
	FormatTablet Format = "tablet"
)

// ContentType returns the MIME type of the format. Mobile and tablet are
// aliases of text/html.
func (f Format) ContentType() string {
	return "text/html; charset=utf-8"
}

// IsDevice reports whether the format is one of the device-specific formats.
func (f Format) IsDevice() bool {
	return f == FormatMobile || f == FormatTablet
}

func (f Format) String() string { return string(f) }

// Preferences is the per-client choice of view. A nil field means the client
// has not decided yet.
type Preferences struct {
	Mobile *bool
	Tablet *bool
}

// IsZero reports whether no preference has been recorded.
func (p Preferences) IsZero() bool {
	return p.Mobile == nil && p.Tablet == nil
}

// Equal compares preferences by value.
func (p Preferences) Equal(o Preferences) bool {
	return sameBool(p.Mobile, o.Mobile) && sameBool(p.Tablet, o.Tablet)
}

// Clone returns a copy that shares no pointers with p.
func (p Preferences) Clone() Preferences {
	return Preferences{Mobile: copyBool(p.Mobile), Tablet: copyBool(p.Tablet)}
}

// For returns the preference that governs f.
func (p Preferences) For(f Format) *bool {
	switch f {
	case FormatMobile:
		return p.Mobile
	case FormatTablet:
		return p.Tablet
	}
	return nil
}

func (p *Preferences) set(f Format, v *bool) {
	switch f {
	case FormatMobile:
		p.Mobile = v
	case FormatTablet:
		p.Tablet = v
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

func sameBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return Bool(*b)
}

func isFalse(b *bool) bool { return b != nil && !*b }
