// Package assistant implements the canned-response helper widget: a
// deterministic keyword matcher over an ordered rule table. No state, no
// learning; the first matching rule wins.
package assistant

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Rule maps a set of trigger keywords to one canned response. A rule
// matches when any of its keywords occurs in the lower-cased query.
type Rule struct {
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`
}

// DefaultFallback is returned when no rule matches.
const DefaultFallback = "I'm sorry, I don't understand that yet. Try asking about rooms, fees, complaints, or the mess timings — or reach the warden's office at extension 100."

// defaultRules covers the topics the hostel help widget answers. Order
// matters: earlier rules win.
var defaultRules = []Rule{
	{
		Keywords: []string{"book", "booking", "room availability", "available room", "vacancy"},
		Response: "To request a room booking, go to Rooms and pick an available room, or ask the admin office to assign you one. Rooms show live availability by block and floor.",
	},
	{
		Keywords: []string{"room", "roommate", "shift", "change room"},
		Response: "Room details and your current assignment are under My Room. For a room change, file a request with the admin office.",
	},
	{
		Keywords: []string{"fee", "fees", "payment", "pay", "due", "overdue", "invoice"},
		Response: "Your fee records and payment history are under Fees. Pending fees can be paid online; a receipt with a transaction id is generated for every payment.",
	},
	{
		Keywords: []string{"complaint", "complain", "broken", "repair", "not working", "issue"},
		Response: "You can file a complaint under Complaints with a title, description, and priority. Staff are paged immediately for high-priority issues.",
	},
	{
		Keywords: []string{"mess", "food", "breakfast", "lunch", "dinner", "menu"},
		Response: "Mess timings: breakfast 7:30-9:30, lunch 12:30-14:30, dinner 19:30-21:30. The weekly menu is posted on the announcements board.",
	},
	{
		Keywords: []string{"wifi", "wi-fi", "internet", "network"},
		Response: "Wi-Fi is available in all blocks. Network name HOSTEL-NET; credentials are issued at check-in. For connectivity problems, file a complaint under Complaints.",
	},
	{
		Keywords: []string{"laundry", "washing", "washer"},
		Response: "The laundry room is on the ground floor of each block, open 6:00-22:00. Machines are first come, first served.",
	},
	{
		Keywords: []string{"visit", "visitor", "guest", "timing", "curfew", "gate"},
		Response: "Visiting hours are 9:00-20:00 on weekdays and 9:00-21:00 on weekends. The main gate closes at 22:30.",
	},
	{
		Keywords: []string{"contact", "warden", "office", "phone", "help"},
		Response: "The warden's office is open 9:00-17:00, extension 100. For emergencies, security is reachable around the clock at extension 111.",
	},
}

// Matcher answers queries from the rule table.
type Matcher struct {
	rules    []Rule
	fallback string
}

// NewMatcher returns a matcher with the built-in rule table.
func NewMatcher() *Matcher {
	return &Matcher{rules: defaultRules, fallback: DefaultFallback}
}

// NewMatcherFromFile loads the rule table from a JSON file, which lets
// deployments adjust wording without a rebuild. The file holds
// {"rules": [...], "fallback": "..."}; a missing fallback keeps the default.
func NewMatcherFromFile(path string) (*Matcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assistant rules file: %w", err)
	}
	var parsed struct {
		Rules    []Rule `json:"rules"`
		Fallback string `json:"fallback"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse assistant rules file: %w", err)
	}
	if len(parsed.Rules) == 0 {
		return nil, fmt.Errorf("assistant rules file %s contains no rules", path)
	}
	m := &Matcher{rules: parsed.Rules, fallback: parsed.Fallback}
	if m.fallback == "" {
		m.fallback = DefaultFallback
	}
	return m, nil
}

// Respond returns the canned response for the query: the response of the
// first rule with a keyword contained in the lower-cased input, or the
// fallback when nothing matches.
func (m *Matcher) Respond(query string) string {
	q := strings.ToLower(query)
	for _, rule := range m.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				return rule.Response
			}
		}
	}
	return m.fallback
}
