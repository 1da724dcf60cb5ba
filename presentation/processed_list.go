package presentation

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"glasslabel-go/domain/label"
	"glasslabel-go/domain/labeling"
)

var (
	positiveColor = color.RGBA{0, 170, 0, 255}
	negativeColor = color.RGBA{200, 60, 60, 255}
)

// ProcessedListItem is one labeled image in the list.
type ProcessedListItem struct {
	Name        string
	Value       label.Value
	Preexisting bool
}

// ProcessedList is a scrollable list of labeled images with a label indicator.
// The most recent label is shown first.
type ProcessedList struct {
	widget.List
	items   []ProcessedListItem
	itemsMu sync.RWMutex
	names   LabelNames
}

// LabelNames holds the display names of both labels.
type LabelNames struct {
	Positive string
	Negative string
}

// Name returns the display name of v.
func (n LabelNames) Name(v label.Value) string {
	if v == label.Positive {
		return n.Positive
	}
	return n.Negative
}

// NewProcessedList creates a new processed-image list widget.
func NewProcessedList(names LabelNames) *ProcessedList {
	pl := &ProcessedList{names: names}

	pl.List = widget.List{
		Length: func() int {
			pl.itemsMu.RLock()
			defer pl.itemsMu.RUnlock()
			return len(pl.items)
		},
		CreateItem: func() fyne.CanvasObject {
			return pl.createItem()
		},
		UpdateItem: func(id widget.ListItemID, item fyne.CanvasObject) {
			pl.updateItem(id, item)
		},
	}

	pl.ExtendBaseWidget(pl)
	return pl
}

func (pl *ProcessedList) createItem() fyne.CanvasObject {
	indicator := canvas.NewCircle(negativeColor)
	indicator.Resize(fyne.NewSize(10, 10))

	name := widget.NewLabel("image.png")
	value := widget.NewLabel("label")

	return container.NewHBox(
		container.NewCenter(container.NewGridWrap(fyne.NewSize(16, 16), indicator)),
		name,
		value,
	)
}

func (pl *ProcessedList) updateItem(id widget.ListItemID, item fyne.CanvasObject) {
	pl.itemsMu.RLock()
	defer pl.itemsMu.RUnlock()

	if id >= len(pl.items) {
		return
	}
	data := pl.items[id]

	row := item.(*fyne.Container)
	indicatorContainer := row.Objects[0].(*fyne.Container)
	gridWrap := indicatorContainer.Objects[0].(*fyne.Container)
	indicator := gridWrap.Objects[0].(*canvas.Circle)

	if data.Value == label.Positive {
		indicator.FillColor = positiveColor
	} else {
		indicator.FillColor = negativeColor
	}
	indicator.Refresh()

	row.Objects[1].(*widget.Label).SetText(data.Name)

	text := pl.names.Name(data.Value)
	if data.Preexisting {
		text += " (existing)"
	}
	row.Objects[2].(*widget.Label).SetText(text)
}

// SetProcessed replaces the list contents with the processed items of a snapshot.
func (pl *ProcessedList) SetProcessed(processed []labeling.ProcessedItem) {
	items := make([]ProcessedListItem, len(processed))
	for i, p := range processed {
		items[len(processed)-1-i] = ProcessedListItem{
			Name:        p.Image.Name,
			Value:       p.Value,
			Preexisting: p.Preexisting,
		}
	}

	pl.itemsMu.Lock()
	pl.items = items
	pl.itemsMu.Unlock()

	pl.Refresh()
}

// Items returns a copy of the listed items.
func (pl *ProcessedList) Items() []ProcessedListItem {
	pl.itemsMu.RLock()
	defer pl.itemsMu.RUnlock()
	return append([]ProcessedListItem(nil), pl.items...)
}

// Count returns the number of listed items.
func (pl *ProcessedList) Count() int {
	pl.itemsMu.RLock()
	defer pl.itemsMu.RUnlock()
	return len(pl.items)
}
