package waste

import "github.com/samber/lo"

// MaxContainers is the number of bins tolerated in one image before it is flagged as overloaded.
const MaxContainers = 2

// Counts summarises a classified image.
type Counts struct {
	// Containers is the number of Bin detections.
	Containers int
	// Overloads is the number of ContainerOverload detections.
	Overloads int
	// Overloaded is set when Containers exceeds MaxContainers or any overload is present.
	Overloaded bool
}

// Aggregate derives container and overload counts.
func Aggregate(dets []Detection) Counts {
	containers := lo.CountBy(dets, func(d Detection) bool { return d.Class == Bin })
	overloads := lo.CountBy(dets, func(d Detection) bool { return d.Class == ContainerOverload })
	return Counts{
		Containers: containers,
		Overloads:  overloads,
		Overloaded: containers > MaxContainers || overloads > 0,
	}
}
