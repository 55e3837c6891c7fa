package validation

// resolveMessage picks the message reported for a failed rule: the custom
// validator's overriding message when one was produced, otherwise the rule's
// own message.
func resolveMessage(rule *Rule, override string) string {
	if override != "" {
		return override
	}
	return rule.Message
}

// dispatchMessage forwards the resolved message of a failed rule: the
// per-rule MessageFunc wins over the engine-level hook, and a rule carrying
// its own MessageFunc never reaches the engine-level hook.
func (e *Engine) dispatchMessage(failed *Rule) {
	if failed.MessageFunc != nil {
		failed.MessageFunc(failed.Message)
		return
	}
	if e.messageHook != nil {
		e.messageHook(failed.Message)
	}
}
