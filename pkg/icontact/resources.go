package icontact

import (
	"net/http"
)

// Resource names understood by ResourceURL. Any other name is appended to
// the base URL as-is.
const (
	ResourceAccounts        = "accounts"
	ResourceUsers           = "users"
	ResourcePermissions     = "permissions"
	ResourceClientFolders   = "client-folders"
	ResourceContacts        = "contacts"
	ResourceContactHistory  = "contact-history"
	ResourceLists           = "lists"
	ResourceSubscriptions   = "subscriptions"
	ResourceMessages        = "messages"
	ResourceMessageBounces  = "message-bounces"
	ResourceMessageClicks   = "message-clicks"
	ResourceMessageOpens    = "message-opens"
	ResourceStatistics      = "statistics"
	ResourceUnsubscribes    = "unsubscribes"
	ResourceSegments        = "segments"
	ResourceSegmentCriteria = "segment-criteria"
	ResourceSends           = "sends"
	ResourceCampaigns       = "campaigns"
	ResourceCustomFields    = "customfields"
	ResourceUploads         = "uploads"
	ResourceTime            = "time"
)

// maxResourceIDs is the number of positional id slots a path can take
const maxResourceIDs = 2

type pathArgs struct {
	account string
	// scope is /a/{account}/c/{clientFolder}
	scope string
	ids   [maxResourceIDs]string
}

type resourceSpec struct {
	path     func(p pathArgs) string
	plural   string
	singular string
	// bareWrites is set for resources whose PUT and DELETE responses
	// carry no envelope key
	bareWrites bool
}

func scoped(name string) func(p pathArgs) string {
	return func(p pathArgs) string {
		return p.scope + "/" + name + "/" + p.ids[0]
	}
}

func messageChild(name string) func(p pathArgs) string {
	return func(p pathArgs) string {
		return p.scope + "/messages/" + p.ids[0] + "/" + name
	}
}

var resources = map[string]resourceSpec{
	ResourceAccounts: {
		path:       func(p pathArgs) string { return "/a/" + p.ids[0] },
		plural:     "accounts",
		singular:   "account",
		bareWrites: true,
	},
	ResourceUsers: {
		path:     func(p pathArgs) string { return "/a/" + p.account + "/users/" + p.ids[0] },
		plural:   "users",
		singular: "user",
	},
	ResourcePermissions: {
		path:     func(p pathArgs) string { return "/a/" + p.account + "/users/" + p.ids[0] + "/permissions" },
		plural:   "permissions",
		singular: "permission",
	},
	ResourceClientFolders: {
		path:     func(p pathArgs) string { return "/a/" + p.account + "/c/" + p.ids[0] },
		plural:   "clientfolders",
		singular: "clientfolder",
	},
	ResourceContacts: {
		path:       scoped("contacts"),
		plural:     "contacts",
		singular:   "contact",
		bareWrites: true,
	},
	ResourceContactHistory: {
		path:     func(p pathArgs) string { return p.scope + "/contacts/" + p.ids[0] + "/actions" },
		plural:   "actions",
		singular: "action",
	},
	ResourceLists: {
		path:       scoped("lists"),
		plural:     "lists",
		singular:   "list",
		bareWrites: true,
	},
	ResourceSubscriptions: {
		path:     scoped("subscriptions"),
		plural:   "subscriptions",
		singular: "subscription",
	},
	ResourceMessages: {
		path:     scoped("messages"),
		plural:   "messages",
		singular: "message",
	},
	ResourceMessageBounces: {
		path:     messageChild("bounces"),
		plural:   "bounces",
		singular: "bounce",
	},
	ResourceMessageClicks: {
		path:     messageChild("clicks"),
		plural:   "clicks",
		singular: "click",
	},
	ResourceMessageOpens: {
		path:     messageChild("opens"),
		plural:   "opens",
		singular: "open",
	},
	ResourceStatistics: {
		path:     messageChild("statistics"),
		plural:   "statistics",
		singular: "statistics",
	},
	ResourceUnsubscribes: {
		path:     messageChild("unsubscribes"),
		plural:   "unsubscribes",
		singular: "unsubscribes",
	},
	ResourceSegments: {
		path:     scoped("segments"),
		plural:   "segments",
		singular: "segment",
	},
	ResourceSegmentCriteria: {
		path: func(p pathArgs) string {
			return p.scope + "/segments/" + p.ids[0] + "/criteria/" + p.ids[1]
		},
		plural:   "criteria",
		singular: "criterion",
	},
	ResourceSends: {
		path:     scoped("sends"),
		plural:   "sends",
		singular: "send",
	},
	ResourceCampaigns: {
		path:     scoped("campaigns"),
		plural:   "campaigns",
		singular: "campaign",
	},
	ResourceCustomFields: {
		path:       scoped("customfields"),
		plural:     "customfields",
		singular:   "customfield",
		bareWrites: true,
	},
	ResourceUploads: {
		path:     scoped("uploads"),
		plural:   "uploads",
		singular: "upload",
	},
	ResourceTime: {
		path:     func(pathArgs) string { return "/time" },
		plural:   "time",
		singular: "time",
	},
}

// resolveResourceURL builds the absolute URL for a resource. Missing ids
// render as empty path segments, so "contacts" without an id resolves to
// ".../contacts/". Only the first two ids are used.
func resolveResourceURL(baseURL, accountID, clientFolderID, resource string, ids []string) string {
	spec, ok := resources[resource]
	if !ok {
		return baseURL + "/" + resource
	}

	p := pathArgs{
		account: accountID,
		scope:   "/a/" + accountID + "/c/" + clientFolderID,
	}
	copy(p.ids[:], ids)

	return baseURL + spec.path(p)
}

// expectedKey returns the envelope key a 200 response must carry, or "" when
// none is expected. Any id at all selects the singular key.
func expectedKey(resource string, ids []string, method string) string {
	spec, ok := resources[resource]
	if !ok {
		return ""
	}
	if spec.bareWrites && method != http.MethodGet && method != http.MethodPost {
		return ""
	}
	if len(ids) > 0 {
		return spec.singular
	}
	return spec.plural
}
