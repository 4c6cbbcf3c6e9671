package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/kmesh/utils"
)

// Parameters obtained from the YAML render parameters file
type RenderParameters struct {
	Title      string     `json:"Title"`
	PageSize   [2]int     `json:"PageSize"`   // Bounding box in page units
	Offset     float64    `json:"Offset"`     // Translation applied before scaling
	Scale      float64    `json:"Scale"`      // Uniform scale applied to the drawing
	LineWidth  float64    `json:"LineWidth"`  // Stroke width of triangle edges
	EdgeColor  utils.CMYK `json:"EdgeColor"`  // Triangle edge color
	PointColor utils.CMYK `json:"PointColor"` // Point marker color
	FillGray   float64    `json:"FillGray"`   // Gray level of the triangle interior
	MarkerSize int        `json:"MarkerSize"` // Half diagonal of a point marker
}

func NewRenderParameters() (rp *RenderParameters) {
	rp = &RenderParameters{
		Title:      "Mesh",
		PageSize:   [2]int{200, 200},
		Offset:     10,
		Scale:      0.9,
		LineWidth:  0.5,
		EdgeColor:  utils.CMYK{0.89, 0.0, 0.89, 0.1},
		PointColor: utils.CMYK{0.89, 0.45, 0.0, 0.1},
		FillGray:   0.9,
		MarkerSize: 4,
	}
	return
}

// Parse overlays the values found in data onto rp, keys absent from data keep their value
func (rp *RenderParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, rp); err != nil {
		return
	}
	return rp.Validate()
}

func (rp *RenderParameters) Validate() error {
	switch {
	case rp.PageSize[0] <= 0 || rp.PageSize[1] <= 0:
		return fmt.Errorf("page size must be positive, have %v", rp.PageSize)
	case rp.Scale <= 0:
		return fmt.Errorf("scale must be positive, have %v", rp.Scale)
	case rp.LineWidth < 0:
		return fmt.Errorf("line width must not be negative, have %v", rp.LineWidth)
	case rp.MarkerSize < 0:
		return fmt.Errorf("marker size must not be negative, have %v", rp.MarkerSize)
	}
	return nil
}

func (rp *RenderParameters) Page() utils.PageSetup {
	return utils.PageSetup{
		Size:      rp.PageSize,
		Offset:    rp.Offset,
		Scale:     rp.Scale,
		LineWidth: rp.LineWidth,
	}
}

func (rp *RenderParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%d %d]\t\t= PageSize\n", rp.PageSize[0], rp.PageSize[1])
	fmt.Printf("%8.5f\t\t= Offset\n", rp.Offset)
	fmt.Printf("%8.5f\t\t= Scale\n", rp.Scale)
	fmt.Printf("%8.5f\t\t= LineWidth\n", rp.LineWidth)
	fmt.Printf("%v\t= EdgeColor\n", rp.EdgeColor)
	fmt.Printf("%v\t= PointColor\n", rp.PointColor)
	fmt.Printf("%8.5f\t\t= FillGray\n", rp.FillGray)
	fmt.Printf("[%d]\t\t\t= MarkerSize\n", rp.MarkerSize)
}
