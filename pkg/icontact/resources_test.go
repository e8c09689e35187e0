package icontact

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testBase = "https://app.icontact.com/icp"

func TestResolveResourceURL(t *testing.T) {
	scope := testBase + "/a/111/c/222"

	tests := []struct {
		resource string
		ids      []string
		want     string
	}{
		{ResourceAccounts, nil, testBase + "/a/"},
		{ResourceAccounts, []string{"111"}, testBase + "/a/111"},
		{ResourceUsers, nil, testBase + "/a/111/users/"},
		{ResourceUsers, []string{"7"}, testBase + "/a/111/users/7"},
		{ResourcePermissions, nil, testBase + "/a/111/users//permissions"},
		{ResourcePermissions, []string{"7"}, testBase + "/a/111/users/7/permissions"},
		{ResourceClientFolders, nil, testBase + "/a/111/c/"},
		{ResourceClientFolders, []string{"222"}, testBase + "/a/111/c/222"},
		{ResourceContacts, nil, scope + "/contacts/"},
		{ResourceContacts, []string{"5"}, scope + "/contacts/5"},
		{ResourceContactHistory, []string{"5"}, scope + "/contacts/5/actions"},
		{ResourceLists, []string{"9"}, scope + "/lists/9"},
		{ResourceSubscriptions, []string{"9_5"}, scope + "/subscriptions/9_5"},
		{ResourceMessages, nil, scope + "/messages/"},
		{ResourceMessageBounces, []string{"3"}, scope + "/messages/3/bounces"},
		{ResourceMessageClicks, []string{"3"}, scope + "/messages/3/clicks"},
		{ResourceMessageOpens, []string{"3"}, scope + "/messages/3/opens"},
		{ResourceStatistics, []string{"3"}, scope + "/messages/3/statistics"},
		{ResourceUnsubscribes, []string{"3"}, scope + "/messages/3/unsubscribes"},
		{ResourceSegments, []string{"4"}, scope + "/segments/4"},
		{ResourceSegmentCriteria, nil, scope + "/segments//criteria/"},
		{ResourceSegmentCriteria, []string{"4"}, scope + "/segments/4/criteria/"},
		{ResourceSegmentCriteria, []string{"4", "8"}, scope + "/segments/4/criteria/8"},
		{ResourceSends, []string{"6"}, scope + "/sends/6"},
		{ResourceCampaigns, []string{"6"}, scope + "/campaigns/6"},
		{ResourceCustomFields, nil, scope + "/customfields/"},
		{ResourceUploads, []string{"1"}, scope + "/uploads/1"},
		{ResourceTime, nil, testBase + "/time"},
		{ResourceTime, []string{"ignored"}, testBase + "/time"},
	}

	for _, tt := range tests {
		t.Run(tt.resource+"/"+tt.want, func(t *testing.T) {
			got := resolveResourceURL(testBase, "111", "222", tt.resource, tt.ids)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveResourceURL_EmptyIDRendersEmptySegment(t *testing.T) {
	got := resolveResourceURL(testBase, "111", "222", ResourceSegmentCriteria, []string{"", "8"})
	assert.Equal(t, testBase+"/a/111/c/222/segments//criteria/8", got)
}

func TestResolveResourceURL_ExtraIDsIgnored(t *testing.T) {
	got := resolveResourceURL(testBase, "111", "222", ResourceSegmentCriteria, []string{"4", "8", "99"})
	assert.Equal(t, testBase+"/a/111/c/222/segments/4/criteria/8", got)
}

func TestResolveResourceURL_UnknownResource(t *testing.T) {
	for _, name := range []string{"widgets", "a/111/custom/path", ""} {
		got := resolveResourceURL(testBase, "111", "222", name, []string{"1", "2"})
		assert.Equal(t, testBase+"/"+name, got)
	}
}

func TestExpectedKey(t *testing.T) {
	one := []string{"1"}

	tests := []struct {
		resource string
		ids      []string
		method   string
		want     string
	}{
		{ResourceAccounts, nil, http.MethodGet, "accounts"},
		{ResourceAccounts, one, http.MethodGet, "account"},
		{ResourceAccounts, one, http.MethodPut, ""},
		{ResourceContacts, nil, http.MethodPost, "contacts"},
		{ResourceContacts, one, http.MethodPost, "contact"},
		{ResourceContacts, one, http.MethodPut, ""},
		{ResourceContacts, one, http.MethodDelete, ""},
		{ResourceLists, one, http.MethodDelete, ""},
		{ResourceCustomFields, nil, http.MethodGet, "customfields"},
		{ResourceCustomFields, one, http.MethodPut, ""},
		{ResourceUsers, nil, http.MethodGet, "users"},
		{ResourceUsers, one, http.MethodDelete, "user"},
		{ResourcePermissions, one, http.MethodGet, "permission"},
		{ResourceClientFolders, nil, http.MethodGet, "clientfolders"},
		{ResourceContactHistory, one, http.MethodGet, "action"},
		{ResourceSubscriptions, one, http.MethodPut, "subscription"},
		{ResourceMessages, nil, http.MethodGet, "messages"},
		{ResourceMessageBounces, one, http.MethodGet, "bounce"},
		{ResourceMessageClicks, nil, http.MethodGet, "clicks"},
		{ResourceMessageOpens, one, http.MethodGet, "open"},
		{ResourceStatistics, one, http.MethodGet, "statistics"},
		{ResourceStatistics, nil, http.MethodGet, "statistics"},
		{ResourceUnsubscribes, one, http.MethodGet, "unsubscribes"},
		{ResourceSegments, one, http.MethodGet, "segment"},
		{ResourceSegmentCriteria, nil, http.MethodGet, "criteria"},
		{ResourceSegmentCriteria, []string{"4", "8"}, http.MethodGet, "criterion"},
		{ResourceSends, nil, http.MethodPost, "sends"},
		{ResourceCampaigns, one, http.MethodGet, "campaign"},
		{ResourceUploads, one, http.MethodGet, "upload"},
		{ResourceTime, nil, http.MethodGet, "time"},
		{"widgets", nil, http.MethodGet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.resource+" "+tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, expectedKey(tt.resource, tt.ids, tt.method))
		})
	}
}
