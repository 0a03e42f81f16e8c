// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import (
	"context"

	"code.hybscloud.com/rill"
)

// FetchAndStoreTodos fetches the todo list, validates it, and replaces the
// stored list with a single atomic update. On any failure — transport or
// decode — the store is left untouched: there is no partial write.
// Interrupting the fiber cancels the in-flight request.
func FetchAndStoreTodos() rill.Effect[Env, error, struct{}] {
	return rill.AccessEnv(func(env Env) rill.Effect[Env, error, struct{}] {
		fetch := rill.Async[Env, error, []Todo](func(resolve func(rill.Result[error, []Todo])) func() {
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				todos, err := env.Client.FetchTodos(ctx)
				if err != nil {
					resolve(rill.Fail[error, []Todo](err))
					return
				}
				resolve(rill.Ok[error](todos))
			}()
			return cancel
		})
		return rill.Chain(fetch, func(todos []Todo) rill.Effect[Env, error, struct{}] {
			return rill.Next[Env, error](env.Store, SetTodos(todos))
		})
	})
}
