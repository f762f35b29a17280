package routing

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoutingRule is a named assignment policy. The stock rule is labeled
// "Round Robin Assignment" although the shipped strategy picks uniformly at
// random; the label is display text only.
type RoutingRule struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Active      bool               `json:"active"`
}

// DefaultRule returns the routing rule the prototype ships with.
func DefaultRule() RoutingRule {
	return RoutingRule{
		ID:          primitive.NewObjectID(),
		Name:        "Round Robin Assignment",
		Description: "Distributes new leads across the sales team",
		Active:      true,
	}
}
