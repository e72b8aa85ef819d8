package triage

import "strings"

type chatRule struct {
	keywords []string
	reply    string
}

// Rules are checked in order; the first rule with a matching keyword wins.
var chatRules = []chatRule{
	{
		keywords: []string{"help", "support"},
		reply:    "I can guide you! Head to the **Patient Support** page to submit a healthcare request. Our AI will auto-detect the priority of your case. [Go to Support](/support)",
	},
	{
		keywords: []string{"volunteer", "join", "register"},
		reply:    "That's wonderful! You can register as a volunteer on our **Volunteer Registration** page. Your skills can save lives! [Register Now](/volunteer)",
	},
	{
		keywords: []string{"free", "cost", "price", "charge"},
		reply:    "All our services are **completely free**! CareConnect is a community-driven platform, no charges, no hidden fees.",
	},
	{
		keywords: []string{"admin", "dashboard"},
		reply:    "The **Admin Dashboard** lets you view all patient requests and volunteers. [View Dashboard](/admin)",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hello! I'm CareBot, your healthcare assistant. Ask me about patient support, volunteering, or anything else!",
	},
	{
		keywords: []string{"blood"},
		reply:    "If you need blood support, please submit a request on our **Patient Support** page and select 'Blood' as the problem type. [Submit Request](/support)",
	},
	{
		keywords: []string{"emergency"},
		reply:    "For emergencies, please submit a request immediately on the **Patient Support** page. Make sure to describe the situation; our AI will mark it as HIGH priority. [Get Help Now](/support)",
	},
}

const defaultChatReply = "I'm here to help! You can ask me about:\n- **Patient support** requests\n- **Volunteering** opportunities\n- **Service costs**\n- **Emergency** help\n\nOr visit the [Support page](/support) directly."

// Reply returns the canned answer for message.
func Reply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return defaultChatReply
}
