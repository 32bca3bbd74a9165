package web

import "net/url"

// Nav is handed to every page; templates call its methods to build links.
type Nav struct{}

func (Nav) Home() string     { return "/" }
func (Nav) Shop() string     { return "/tienda" }
func (Nav) Sponsors() string { return "/sponsors" }
func (Nav) Scooter() string  { return "/scooter" }
func (Nav) Admin() string    { return "/admin" }

func (Nav) Budget(id string) string {
	return "/presupuesto/" + url.PathEscape(id)
}

// Lookup links the scooter page with a plate search filled in.
func (Nav) Lookup(plate string) string {
	return "/scooter?plate=" + url.QueryEscape(plate)
}
