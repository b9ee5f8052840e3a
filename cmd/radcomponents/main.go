// Package main is the entry point for the radcomponents module host.
//
//	@title			Rad Components Module API
//	@version		1.0
//	@description	Reference designer and gateway host for the Rad Components module.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8088
//	@BasePath		/
package main

func main() {
	Execute()
}
