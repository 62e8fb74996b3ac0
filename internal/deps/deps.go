// Package deps locates the external tools bdmenu drives and reports whether
// they are available.
package deps

// Requirement defines an external dependency bdmenu relies on.
type Requirement struct {
	Name        string
	Tool        string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// DefaultRequirements lists the tools the authoring pipeline needs.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Tool: ToolFFmpeg, Description: "Encodes the menu loop and the feature video"},
		{Name: "tsMuxeR", Tool: ToolTsMuxer, Description: "Multiplexes streams into the Blu-ray image"},
	}
}

// CheckBinaries evaluates the provided requirements through the locator and
// reports availability.
func CheckBinaries(locator *Locator, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Command:     req.Tool,
			Description: req.Description,
			Optional:    req.Optional,
		}
		if req.Tool == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := locator.Locate(req.Tool)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Command = path
		status.Available = true
		results = append(results, status)
	}
	return results
}
