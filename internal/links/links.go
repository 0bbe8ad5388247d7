// Package links builds the outbound deep-link URLs for "find a part"
// and "find a pro" actions. These are plain URL constructions, not
// vendor integrations.
package links

import (
	"net/url"
	"strings"

	"github.com/fegodi/homekeep/internal/model"
)

func partQuery(p model.Part) string {
	return strings.TrimSpace(p.Name + " " + p.Spec)
}

// AmazonSearch links to an Amazon search for a part.
func AmazonSearch(p model.Part) string {
	return "https://amazon.com/s?k=" + url.QueryEscape(partQuery(p))
}

// GoogleShopping links to a Google Shopping search for a part.
func GoogleShopping(p model.Part) string {
	return "https://google.com/search?tbm=shop&q=" + url.QueryEscape(partQuery(p))
}

// FindPro links to a Google Maps search for a nearby professional in
// the task's category.
func FindPro(category model.Category) string {
	return "https://google.com/maps/search/" + url.PathEscape(string(category)+" repair near me")
}
