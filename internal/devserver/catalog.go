package devserver

// tierInfo mirrors the production tier catalog so local development sees
// realistic payloads.
type tierInfo struct {
	Price    uint     `json:"price"`
	Features []string `json:"features"`
}

var tierCatalog = map[string]tierInfo{
	"freemium": {Price: 0, Features: []string{"base_os", "wine", "proton"}},
	"basic": {Price: 49, Features: []string{
		"base_os", "wine", "proton", "security", "ai_detection", "firewall", "priority_support",
	}},
	"gamer": {Price: 99, Features: []string{
		"base_os", "wine", "proton", "security", "ai_detection", "gaming_tools", "gpu_acceleration", "priority_support",
	}},
	"ai-dev": {Price: 149, Features: []string{
		"base_os", "wine", "proton", "security", "ai_detection", "docker", "pytorch", "tensorflow", "jupyter", "gpu_acceleration", "enterprise_support",
	}},
	"server": {Price: 199, Features: []string{
		"base_os", "security", "ai_detection", "docker", "postgresql", "nginx", "prometheus", "grafana", "rebootless_patching", "enterprise_support_24/7",
	}},
}

func tierNames() []string {
	names := make([]string, 0, len(tierCatalog))
	for name := range tierCatalog {
		names = append(names, name)
	}
	return names
}

type marketplaceApp struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Version     string  `json:"version"`
	Downloads   int     `json:"downloads"`
	Rating      float64 `json:"rating"`
	Price       float64 `json:"price"`
}

var marketplaceApps = []marketplaceApp{
	{ID: "app-001", Name: "VSCode Integration", Description: "Develop directly in Aegis OS", Version: "1.0.0", Downloads: 1250, Rating: 4.8, Price: 0},
	{ID: "app-002", Name: "Advanced Profiler", Description: "System performance profiling", Version: "1.0.0", Downloads: 845, Rating: 4.9, Price: 29.99},
	{ID: "app-003", Name: "Cloud Sync", Description: "Sync files to cloud storage", Version: "2.0.0", Downloads: 2100, Rating: 4.7, Price: 49.99},
}
