// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package todoapp

import (
	"code.hybscloud.com/rill"
)

// Program is the whole application as one effect: mount the document,
// render the seed state, start the render loop on a forked fiber, then run
// the command loop (optionally racing an initial fetch) until quit. The
// render task is cancelled however the program ends, so the subscription
// deregisters and the terminal stops updating.
func Program(autoLoad bool) rill.Effect[Env, error, struct{}] {
	boot := rill.Then(Mount(), initialRender())
	return rill.Chain(boot, func(struct{}) rill.Effect[Env, error, struct{}] {
		return rill.Chain(rill.Fork(RenderLoop()), func(render *rill.Task[error, struct{}]) rill.Effect[Env, error, struct{}] {
			main := CommandLoop()
			if autoLoad {
				zipped := rill.ParZip(FetchAndStoreTodos(), main)
				main = rill.Map(zipped, func(rill.Pair[struct{}, struct{}]) struct{} {
					return struct{}{}
				})
			}
			return rill.Ensuring(main, render.Cancel)
		})
	})
}

// initialRender projects the seed state once, before any update arrives.
func initialRender() rill.Effect[Env, error, struct{}] {
	return rill.AccessEnv(func(env Env) rill.Effect[Env, error, struct{}] {
		return rill.Chain(rill.Get[Env, error](env.Store), func(o rill.Option[State]) rill.Effect[Env, error, struct{}] {
			s, ok := o.Get()
			if !ok {
				s = NewState()
			}
			return RenderState(env, s)
		})
	})
}
