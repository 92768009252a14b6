package main

import "github.com/killallgit/audioengine/cmd"

// @title           Audio Engine API
// @version         1.0.0
// @description     Audio metadata and display waveform extraction for media dashboards
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/audioengine
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
