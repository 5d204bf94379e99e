package banner

import "fmt"

const banner = `
 ██████╗  █████╗ ██╗     ██╗     ███████╗██████╗ ██╗   ██╗    ██████╗ ██████╗
██╔════╝ ██╔══██╗██║     ██║     ██╔════╝██╔══██╗╚██╗ ██╔╝    ██╔══██╗██╔══██╗
██║  ███╗███████║██║     ██║     █████╗  ██████╔╝ ╚████╔╝     ██║  ██║██████╔╝
██║   ██║██╔══██║██║     ██║     ██╔══╝  ██╔══██╗  ╚██╔╝      ██║  ██║██╔══██╗
╚██████╔╝██║  ██║███████╗███████╗███████╗██║  ██║   ██║       ██████╔╝██████╔╝
 ╚═════╝ ╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝╚═╝  ╚═╝   ╚═╝       ╚═════╝ ╚═════╝
`

// Print writes the startup banner with the effective runtime settings.
func Print(addr, dataDir, sources, version string, adminConfigured bool) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:    %s\n", addr)
	fmt.Printf("Data dir:  %s\n", dataDir)
	if version != "" {
		fmt.Printf("Version:   %s\n", version)
	}
	if sources != "" {
		fmt.Printf("Config sources: %s\n", sources)
	}
	if adminConfigured {
		fmt.Println("Admin token: configured")
	} else {
		fmt.Println("Admin token: MISSING (POST /admin/migrate will reject all requests)")
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("PUT  /upload                      - Publish a thread")
	fmt.Println("GET  /gallery?offset&limit        - Paginated listing")
	fmt.Println("GET  /gallery/search?q&style      - Filtered search")
	fmt.Println("GET  /thread/<id>                 - Full thread document")
	fmt.Println("GET  /image/<key>                 - Raw image bytes")
	fmt.Println("POST /admin/migrate               - Backfill derived metadata")
}
