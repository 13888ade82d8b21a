package ui

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 72 || rows < 20 {
		return LayoutTooSmall
	}
	if cols >= 110 && rows >= 28 {
		return LayoutWide
	}
	return LayoutCompact
}
