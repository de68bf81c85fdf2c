package permissions

import "strings"

// Entry describes one permission for the catalogue endpoint.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int64  `json:"value"`
}

// Group collects the permissions of one resource.
type Group struct {
	Name        string  `json:"group_name"`
	Permissions []Entry `json:"permissions"`
}

var verbs = map[string]string{
	"READ":        "view",
	"CREATE":      "create",
	"UPDATE":      "update",
	"DELETE":      "delete",
	"INVITE":      "invite",
	"UPDATE_ROLE": "change the role of",
}

// Describe renders a short human description, e.g. "Can invite users".
func Describe(p Permission) string {
	resource, action := split(p.String())
	verb, ok := verbs[action]
	if !ok {
		verb = strings.ToLower(action)
	}
	return "Can " + verb + " " + strings.ToLower(strings.ReplaceAll(resource, "_", " "))
}

// Catalogue groups every permission by resource, in bit order.
func Catalogue() []Group {
	var groups []Group
	index := map[string]int{}
	for _, p := range All() {
		resource, _ := split(p.String())
		name := title(resource)
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Permissions = append(groups[i].Permissions, Entry{Name: p.String(), Description: Describe(p), Value: int64(p)})
	}
	return groups
}

func split(name string) (resource, action string) {
	// Longest matching action wins so USERS_UPDATE_ROLE is not read as an UPDATE.
	for suffix := range verbs {
		if strings.HasSuffix(name, "_"+suffix) && len(suffix) > len(action) {
			resource, action = strings.TrimSuffix(name, "_"+suffix), suffix
		}
	}
	if action == "" {
		return name, ""
	}
	return resource, action
}

func title(resource string) string {
	words := strings.Split(strings.ToLower(resource), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
